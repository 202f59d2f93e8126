package model

// Question 由大模型生成的问答对，生成后不可编辑
// swagger:model Question
type Question struct {
	BaseModel
	DocumentID uint   `gorm:"index;not null" json:"documentId"`
	Question   string `gorm:"type:text;not null" json:"question"`
	Answer     string `gorm:"type:text;not null" json:"answer"`
}

func (Question) TableName() string {
	return "questions"
}

// QAPair 生成与解析接口交换的问答结构
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
