package access

// Action - защищаемое действие API.
type Action string

const (
	// CourseList - просмотр каталога курсов.
	CourseList Action = "course:list"
	// CourseRead - просмотр курса с уроками; видео доступно по праву на курс.
	CourseRead Action = "course:read"
	// CourseCreate - создание курса преподавателем.
	CourseCreate Action = "course:create"
	// CourseUpdate - изменение своего курса.
	CourseUpdate Action = "course:update"
	// CourseDelete - удаление своего курса без покупок.
	CourseDelete Action = "course:delete"
	// PurchaseList - список купленных курсов клиента.
	PurchaseList Action = "purchase:list"
	// Checkout - создание платёжной сессии.
	Checkout Action = "checkout"
	// AdminUsers - список пользователей.
	AdminUsers Action = "admin:users"
	// AdminUserCreate - создание пользователя с любой ролью.
	AdminUserCreate Action = "admin:user-create"
	// AdminReports - отчёт о продажах по курсам.
	AdminReports Action = "admin:reports"
	// AdminStats - помесячная статистика продаж.
	AdminStats Action = "admin:stats"
	// EducatorClients - клиенты, купившие курсы преподавателя.
	EducatorClients Action = "educator:clients"
	// ProgressTrack - чтение и отметка прогресса по урокам.
	ProgressTrack Action = "progress:track"
)

// Actions возвращает все известные действия.
func Actions() []Action {
	return []Action{
		CourseList, CourseRead, CourseCreate, CourseUpdate, CourseDelete,
		PurchaseList, Checkout,
		AdminUsers, AdminUserCreate, AdminReports, AdminStats,
		EducatorClients, ProgressTrack,
	}
}

// Valid сообщает, что действие входит в закрытый набор.
func (a Action) Valid() bool {
	for _, known := range Actions() {
		if a == known {
			return true
		}
	}
	return false
}

func (a Action) String() string {
	return string(a)
}
