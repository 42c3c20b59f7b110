// internals/features/evaluasi/tahapan/model/file_item.go
package model

// FileItem adalah metadata satu lampiran yang tersimpan di kolom JSON.
// Key adalah object key di blob storage; URL hasil Put disimpan supaya
// response tidak perlu menyentuh storage lagi.
type FileItem struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
