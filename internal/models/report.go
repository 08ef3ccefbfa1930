package models

// CourseSales - статистика продаж одного курса.
type CourseSales struct {
	CourseID string  `json:"kursId"`
	Title    string  `json:"naziv"`
	Revenue  float64 `json:"prihod"`
	Sold     int     `json:"prodato"`
}

// MonthlySales - продажи за календарный месяц (формат месяца 2006-01).
type MonthlySales struct {
	Month   string  `json:"mesec"`
	Revenue float64 `json:"prihod"`
	Sold    int     `json:"prodato"`
}

// EducatorClient - клиент, купивший хотя бы один курс преподавателя.
type EducatorClient struct {
	UserID        string `json:"korisnikId"`
	FirstName     string `json:"ime"`
	LastName      string `json:"prezime"`
	Email         string `json:"email"`
	CoursesBought int    `json:"brojKurseva"`
}

// Progress - прогресс пользователя по курсу.
type Progress struct {
	CourseID  string `json:"kursId"`
	Completed int    `json:"zavrseno"`
	Total     int    `json:"ukupno"`
	Percent   int    `json:"procenat"`
}
