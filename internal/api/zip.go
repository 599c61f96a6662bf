package api

import (
	"archive/zip"
	"bytes"

	"github.com/youruser/cardgen/internal/watermark"
)

// archive packs outputs into one zip, in order.
func archive(outputs []watermark.Output) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, o := range outputs {
		w, err := zw.Create(o.Name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(o.Data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
