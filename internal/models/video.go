package models

// VideoStatus is the value kept in videos.status.
type VideoStatus string

const (
	VideoProcessing VideoStatus = "processing"
	VideoDone       VideoStatus = "done"
	VideoError      VideoStatus = "error"
)
