package models

import "time"

// Download records a photo image saved on this machine.
type Download struct {
	PhotoID      int64
	PhotoURL     string
	LocalPath    string
	DownloadedAt time.Time
}
