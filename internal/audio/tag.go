package audio

import (
	"fmt"
	"strconv"

	"github.com/bogem/id3v2"
)

// Tags are the ID3v2 frames written into a clip.
type Tags struct {
	Title   string // TIT2
	Album   string // TALB
	Track   int    // TRCK, with Total as "n/total"
	Total   int
	Comment string // COMM
}

// Tagger writes ID3v2 tags into mp3 files in place.
type Tagger struct {
	language string
}

// NewTagger creates a Tagger. Comment frames are written with the "eng" language code.
func NewTagger() *Tagger {
	return &Tagger{language: "eng"}
}

// Write replaces the text frames of the file at path with tags.
// Frames written by the encoder (TSSE) are kept.
func (t *Tagger) Write(path string, tags Tags) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTagFailed, path, err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(tags.Title)
	tag.SetAlbum(tags.Album)
	if tags.Track > 0 {
		tag.AddTextFrame(tag.CommonID("Track number/Position in set"), id3v2.EncodingUTF8, trackFrame(tags.Track, tags.Total))
	}

	tag.DeleteFrames(tag.CommonID("Comments"))
	if tags.Comment != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: t.language,
			Text:     tags.Comment,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTagFailed, path, err)
	}
	return nil
}

// trackFrame formats TRCK as "n" or "n/total".
func trackFrame(track, total int) string {
	if total <= 0 {
		return strconv.Itoa(track)
	}
	return strconv.Itoa(track) + "/" + strconv.Itoa(total)
}
