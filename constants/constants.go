package constants

import "os"

// GetMetadataEndpoint returns the DynamoDB endpoint used for song metadata
// lookups, or "" if metadata lookups are disabled.
func GetMetadataEndpoint() string {
	return os.Getenv("METADATA_ENDPOINT")
}

const MetadataTable = "midiscore-metadata"

// DrumChannel is the MIDI channel reserved for percussion.
const DrumChannel = 9

// MaxChannel is the highest addressable MIDI channel.
const MaxChannel = 15

// DefaultTicksPerBeat is the time resolution used when none is given.
const DefaultTicksPerBeat = 480
