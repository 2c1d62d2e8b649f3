package history

import (
	"path/filepath"
	"strings"
)

// Kind classifies an uploaded file.
type Kind int

const (
	KindUnsupported Kind = iota
	KindVoice
	KindDocument
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindVoice:
		return "voice"
	case KindDocument:
		return "document"
	case KindImage:
		return "image"
	default:
		return "unsupported"
	}
}

var kindsBySuffix = map[string]Kind{
	".wav":  KindVoice,
	".mp3":  KindVoice,
	".pdf":  KindDocument,
	".doc":  KindDocument,
	".docx": KindDocument,
	".txt":  KindDocument,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".png":  KindImage,
	".gif":  KindImage,
}

// Attachment is an uploaded file referenced by path.
type Attachment struct {
	Path string
	Kind Kind
}

// Classify resolves an attachment's kind from its file-name suffix.
func Classify(path string) Attachment {
	ext := strings.ToLower(filepath.Ext(path))
	kind, ok := kindsBySuffix[ext]
	if !ok {
		kind = KindUnsupported
	}
	return Attachment{Path: path, Kind: kind}
}

// Name is the base name shown to the user and the model.
func (a Attachment) Name() string {
	return filepath.Base(a.Path)
}
