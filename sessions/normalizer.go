package sessions

import (
	"context"

	"github.com/Desarso/insurebot/extract"
	"github.com/Desarso/insurebot/history"
	"github.com/Desarso/insurebot/i18n"
	"github.com/Desarso/insurebot/transcribe"
)

// Normalizer turns a submission into open turns appended to the history.
type Normalizer struct {
	Transcriber Transcriber
	Extractor   Extractor
}

// Normalize appends one open turn per attachment, in order, then one for the
// free text. The input history is left untouched.
func (n *Normalizer) Normalize(ctx context.Context, h history.History, sub Submission, lang i18n.Language) history.History {
	c := i18n.Lookup(lang)
	turns := make([]history.Turn, 0, len(sub.Files)+1)

	for _, path := range sub.Files {
		att := history.Classify(path)
		var text string
		switch att.Kind {
		case history.KindVoice:
			text = c.Format(i18n.KeyAudioUploaded, att.Name()) + "\n\n" + n.transcribe(ctx, att.Path)
		case history.KindDocument:
			text = c.Format(i18n.KeyDocumentUploaded, att.Name()) + "\n\n" + n.extract(att.Path, lang)
		case history.KindImage:
			text = c.Format(i18n.KeyImageUnsupported, att.Name())
		case history.KindUnsupported:
			text = c.Format(i18n.KeyFileUnsupported, att.Name())
		}
		turns = append(turns, history.NewOpenTurn(text))
	}

	if sub.Text != "" {
		turns = append(turns, history.NewOpenTurn(sub.Text))
	}
	return h.Append(turns...)
}

func (n *Normalizer) transcribe(ctx context.Context, path string) string {
	if n.Transcriber == nil {
		return transcribe.NotAvailable
	}
	return n.Transcriber.Transcribe(ctx, path)
}

func (n *Normalizer) extract(path string, lang i18n.Language) string {
	if n.Extractor == nil {
		return extract.New().Extract(path, lang)
	}
	return n.Extractor.Extract(path, lang)
}
