package models

// FAQ вопрос и ответ для публичной страницы помощи.
type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Position int    `json:"position"`
}

// FAQRequest тело запроса создания или изменения FAQ.
type FAQRequest struct {
	Question string `json:"question" validate:"required,max=500"`
	Answer   string `json:"answer" validate:"required,max=5000"`
	Category string `json:"category" validate:"required,max=50"`
	Position int    `json:"position" validate:"gte=0"`
}
