// Package archive persists songs as gzipped gob blobs.
package archive

import (
	"compress/gzip"
	"encoding/gob"
	"os"

	"github.com/jsphweid/midiscore/song"
)

// Save writes the song to a gzipped gob file.
func Save(s *song.Song, filepath string) error {
	f, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if err := gob.NewEncoder(zw).Encode(s); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// Load reads a song saved by Save.
func Load(filepath string) (*song.Song, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var s song.Song
	if err := gob.NewDecoder(zr).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
