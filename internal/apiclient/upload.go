package apiclient

import (
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/pkg/errors"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Upload is one file to forward to the API. Open is called once, while the request body streams.
type Upload struct {
	FieldName   string
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// FileUpload adapts a file received by our own form handler.
func FileUpload(fh *multipart.FileHeader) *Upload {
	if fh == nil {
		return nil
	}
	return &Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}

// sendMultipart streams fields plus an optional file through a pipe, so large videos are
// never buffered whole in memory.
func (c *Client) sendMultipart(ctx context.Context, method, path string, fields [][2]string, file *Upload, out any) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMultipart(mw, fields, file))
	}()

	req, err := c.newRequest(ctx, method, path, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	err = c.do(req, out)
	_ = pr.Close()
	return err
}

func writeMultipart(mw *multipart.Writer, fields [][2]string, file *Upload) error {
	for _, kv := range fields {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return errors.Wrapf(err, "write field %s", kv[0])
		}
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+quoteEscaper.Replace(file.FieldName)+`"; filename="`+quoteEscaper.Replace(file.Filename)+`"`)
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return errors.Wrap(err, "create file part")
		}
		src, err := file.Open()
		if err != nil {
			return errors.Wrapf(err, "open %s", file.Filename)
		}
		_, err = io.Copy(part, src)
		src.Close()
		if err != nil {
			return errors.Wrapf(err, "copy %s", file.Filename)
		}
	}
	return mw.Close()
}
