package cli

import (
	"fmt"

	"github.com/alnah/sampleclips/internal/audio"
	"github.com/alnah/sampleclips/internal/format"
	"github.com/alnah/sampleclips/internal/sampler"
)

// tagAlbum groups every clip under one album in music players.
const tagAlbum = "sampleclips"

// clipTagger maps clip metadata onto ID3 frames.
type clipTagger struct {
	w *audio.Tagger
}

var _ sampler.Tagger = (*clipTagger)(nil)

func (t *clipTagger) Tag(path string, meta sampler.ClipMeta) error {
	return t.w.Write(path, clipTags(meta))
}

// clipTags records where a clip was cut from, so a sample can be traced
// back to its source.
func clipTags(meta sampler.ClipMeta) audio.Tags {
	return audio.Tags{
		Title:   fmt.Sprintf("clip_%03d @ %ss", meta.Index, format.Seconds(meta.Start)),
		Album:   tagAlbum,
		Track:   meta.Index,
		Total:   meta.Total,
		Comment: fmt.Sprintf("source: %s, start: %ss, length: %gs", meta.URL, format.Seconds(meta.Start), meta.Length),
	}
}
