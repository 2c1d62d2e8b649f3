package sessions

import (
	"context"
	"testing"

	"github.com/Desarso/insurebot/history"
	"github.com/Desarso/insurebot/i18n"
	"github.com/Desarso/insurebot/transcribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_LeavesInputUntouched(t *testing.T) {
	base := history.History{history.NewClosedTurn("a", history.TextReply("b"))}
	n := &Normalizer{}
	out := n.Normalize(context.Background(), base, Submission{Text: "c"}, i18n.English)
	require.Len(t, out, 2)
	assert.Len(t, base, 1)
	assert.Equal(t, history.NewOpenTurn("c"), out[1])
}

func TestNormalize_UnsupportedKinds(t *testing.T) {
	n := &Normalizer{}
	out := n.Normalize(context.Background(), nil, Submission{Files: []string{"photo.PNG", "archive.zip"}}, i18n.English)
	require.Len(t, out, 2)
	assert.Contains(t, out[0].UserText, "image file named 'photo.PNG'")
	assert.Contains(t, out[1].UserText, "unsupported format: 'archive.zip'")
}

func TestNormalize_VoiceWithoutTranscriber(t *testing.T) {
	n := &Normalizer{}
	out := n.Normalize(context.Background(), nil, Submission{Files: []string{"note.mp3"}}, i18n.French)
	require.Len(t, out, 1)
	assert.Equal(t, "J'ai téléchargé un fichier audio nommé 'note.mp3' avec le contenu suivant:\n\n"+transcribe.NotAvailable, out[0].UserText)
}

func TestNormalize_SkipsEmptyText(t *testing.T) {
	n := &Normalizer{Extractor: fakeExtractor{text: "body"}}
	out := n.Normalize(context.Background(), nil, Submission{Files: []string{"terms.txt"}}, i18n.English)
	require.Len(t, out, 1)
	assert.True(t, out[0].Open)
}
