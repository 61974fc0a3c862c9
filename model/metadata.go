package model

type SongMetadata struct {
	Artist  string
	Release string
	Title   string
	Year    uint
}
