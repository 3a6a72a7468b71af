package models

// Avatar is the image attached to a student. Data mirrors the file at FilePath.
type Avatar struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	FilePath  string `json:"filePath" db:"file_path" example:"avatars/avatar_42.png"`
	FileSize  int64  `json:"fileSize" db:"file_size" example:"1024"`
	MediaType string `json:"mediaType" db:"media_type" example:"image/png"`
	Data      []byte `json:"-" db:"data"`
	StudentID int64  `json:"studentId" db:"student_id" example:"42"`
}
