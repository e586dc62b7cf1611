package queue

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/pdfdrop/internal/client/models"
	"github.com/dmitrijs2005/pdfdrop/internal/common"
)

var detectType = func(f models.File) string {
	rc, err := f.Open()
	if err != nil {
		return ""
	}
	defer rc.Close()

	m, err := mimetype.DetectReader(rc)
	if err != nil {
		return ""
	}
	return m.String()
}

// admissible accepts a declared PDF type or a .pdf name. Files that declare
// no type at all are sniffed.
func admissible(f models.File) bool {
	declared := f.ContentType()
	if mt, _, err := mime.ParseMediaType(declared); err == nil && strings.EqualFold(mt, common.PDFContentType) {
		return true
	}
	if strings.HasSuffix(strings.ToLower(f.Name()), common.PDFExtension) {
		return true
	}
	if declared != "" {
		return false
	}

	sniffed, _, err := mime.ParseMediaType(detectType(f))
	return err == nil && sniffed == common.PDFContentType
}
