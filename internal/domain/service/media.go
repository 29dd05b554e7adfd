package service

import (
	"encoding/base64"
	"mime"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/The-Gleb/advertisement_form/internal/domain/entity"
	"github.com/The-Gleb/advertisement_form/internal/errors"
)

const dataURLPrefix = "data:"

// EncodeMedia turns an uploaded image or video into a base64 data URL.
func EncodeMedia(fileName string, data []byte) (entity.Media, error) {
	if len(data) == 0 {
		return entity.Media{}, errors.NewDomainError(errors.ErrInvalidMedia, "file %q is empty", fileName)
	}

	contentType := baseMediaType(http.DetectContentType(data))
	if contentType == "application/octet-stream" || contentType == "text/plain" {
		if byExt := baseMediaType(mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName)))); byExt != "" {
			contentType = byExt
		}
	}

	kind := kindOf(contentType)
	if kind == entity.MediaNone {
		return entity.Media{}, errors.NewDomainError(errors.ErrInvalidMedia, "file %q has type %s, expected image or video", fileName, contentType)
	}

	return entity.Media{
		Kind:        kind,
		ContentType: contentType,
		Encoded:     dataURLPrefix + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// MediaFromText classifies media the server already holds, either a data URL or a link.
func MediaFromText(s string) entity.Media {
	if s == "" {
		return entity.Media{}
	}

	var contentType string
	if strings.HasPrefix(s, dataURLPrefix) {
		header, _, _ := strings.Cut(strings.TrimPrefix(s, dataURLPrefix), ",")
		contentType = baseMediaType(header)
	} else {
		p := s
		if u, err := url.Parse(s); err == nil {
			p = u.Path
		}
		contentType = baseMediaType(mime.TypeByExtension(strings.ToLower(path.Ext(p))))
	}

	kind := kindOf(contentType)
	if kind == entity.MediaNone {
		kind = entity.MediaImage
	}

	return entity.Media{Kind: kind, ContentType: contentType, Encoded: s}
}

func kindOf(contentType string) entity.MediaKind {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return entity.MediaImage
	case strings.HasPrefix(contentType, "video/"):
		return entity.MediaVideo
	default:
		return entity.MediaNone
	}
}

func baseMediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		before, _, _ := strings.Cut(contentType, ";")
		return strings.TrimSpace(strings.ToLower(before))
	}
	return mediaType
}
