package extract

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/sirupsen/logrus"
)

// Document is an opened PDF file. The page count is read when the document is
// opened, the text layer is parsed on first use.
type Document struct {
	Filename string

	pages int

	f       *os.File
	r       *pdf.Reader
	textErr error
	fonts   map[string]*pdf.Font

	log logrus.FieldLogger
}

// Open reads the page count of filename. If pdfcpu rejects the file, the page
// count of the text layer is used. An error is returned only if neither can
// read the file.
func Open(filename string, logger logrus.FieldLogger) (*Document, error) {
	d := &Document{
		Filename: filename,
		fonts:    make(map[string]*pdf.Font),
		log:      logger.WithField("component", "extract").WithField("filename", filename),
	}

	pages, err := pageCount(filename)
	if err == nil {
		d.pages = pages

		return d, nil
	}

	d.log.Debugf("read page count failed, using text layer: %v", err)

	terr := d.openText()
	if terr != nil {
		return nil, fmt.Errorf("read %v failed (page count: %v): %w", filename, err, terr)
	}

	d.pages = d.r.NumPage()

	return d, nil
}

func pageCount(filename string) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validate %v: %v", filename, r)
		}
	}()

	return pdfcpu.PageCountFile(filename)
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return d.pages
}

func (d *Document) openText() (err error) {
	if d.r != nil || d.textErr != nil {
		return d.textErr
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse %v: %v", d.Filename, r)
		}

		d.textErr = err
	}()

	f, r, err := pdf.Open(d.Filename)
	if err != nil {
		return fmt.Errorf("open text layer of %v failed: %w", d.Filename, err)
	}

	d.f = f
	d.r = r

	if d.pages > 0 && r.NumPage() != d.pages {
		d.log.Debugf("text layer has %d pages, document has %d", r.NumPage(), d.pages)
	}

	return nil
}

func (d *Document) pageText(i int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", i+1, r)
		}
	}()

	if i >= d.r.NumPage() {
		return "", nil
	}

	p := d.r.Page(i + 1)
	if p.V.IsNull() {
		return "", nil
	}

	for _, name := range p.Fonts() {
		if _, ok := d.fonts[name]; !ok {
			font := p.Font(name)
			d.fonts[name] = &font
		}
	}

	return p.GetPlainText(d.fonts)
}

// PageText returns the plain text on the zero-based page i. Pages without
// text, pages which cannot be decoded and out of range indexes yield the
// empty string.
func (d *Document) PageText(i int) string {
	if i < 0 || i >= d.pages {
		return ""
	}

	err := d.openText()
	if err != nil {
		d.log.Debugf("no text: %v", err)

		return ""
	}

	text, err := d.pageText(i)
	if err != nil {
		d.log.Debugf("extract text failed: %v", err)

		return ""
	}

	return text
}

// Close releases the file handle.
func (d *Document) Close() error {
	if d.f == nil {
		return nil
	}

	err := d.f.Close()
	d.f = nil

	if err != nil {
		return fmt.Errorf("close %v failed: %w", d.Filename, err)
	}

	return nil
}
