package forms

import (
	"fmt"
	"mime/multipart"
	"slices"
	"strings"

	"dealerpro/internal/domain"
)

// VideoTypes are the upload types the ad form accepts.
var VideoTypes = []string{"video/mp4", "video/webm", "video/ogg", "video/avi", "video/quicktime"}

const MsgVideoRequired = "File video wajib diupload"

type Video struct {
	Title  string
	Errors Errors
	// VideoURL is the stored file when editing.
	VideoURL string
}

func NewVideo() *Video { return &Video{Errors: Errors{}} }

func VideoFrom(v domain.Video) *Video {
	return &Video{Title: v.Title, Errors: Errors{}, VideoURL: v.VideoURL}
}

func (f *Video) Validate(create bool, file *multipart.FileHeader, maxBytes int64) bool {
	f.Errors = Errors{}
	if strings.TrimSpace(f.Title) == "" {
		f.Errors.Set("title", "Judul video harus diisi")
	}
	switch {
	case file == nil && create:
		f.Errors.Set("video", MsgVideoRequired)
	case file != nil && !slices.Contains(VideoTypes, file.Header.Get("Content-Type")):
		f.Errors.Set("video", "Format video tidak didukung")
	case file != nil && maxBytes > 0 && file.Size > maxBytes:
		f.Errors.Set("video", fmt.Sprintf("Ukuran video maksimal %d MB", maxBytes>>20))
	}
	return f.Errors.Empty()
}

// Accept is the value for the file input's accept attribute.
func (f *Video) Accept() string { return strings.Join(VideoTypes, ",") }
