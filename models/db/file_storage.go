package dbmodels

type FileType string

const (
	FileTypeLeaveRegister FileType = "leave_register"
)

// FileStorage - метаданные файла в объектном хранилище,
// сам файл лежит в бакете организации под идентификатором записи
type FileStorage struct {
	BaseSpaceModel
	Name        string   `gorm:"type:varchar(255)"`
	FileType    FileType `gorm:"type:varchar(50)"`
	ContentType string   `gorm:"type:varchar(100)"`
	Size        int64
}
