package models

// Principal - личность вызывающей стороны в рамках одного запроса.
//
// Принципал либо полностью анонимен (нет SubjectID и роли), либо полностью
// определён. Частичные состояния сворачиваются в анонимного.
type Principal struct {
	SubjectID string
	Email     string
	Role      Role
}

// Anonymous возвращает анонимного принципала.
func Anonymous() Principal {
	return Principal{}
}

// NewPrincipal создаёт принципала; при пустом идентификаторе или неизвестной
// роли возвращается анонимный.
func NewPrincipal(subjectID string, role Role, email string) Principal {
	if subjectID == "" || !role.Valid() {
		return Anonymous()
	}
	return Principal{SubjectID: subjectID, Role: role, Email: email}
}

// IsAnonymous сообщает, что запрос выполняется без действующих учётных данных.
func (p Principal) IsAnonymous() bool {
	return p.SubjectID == "" || !p.Role.Valid()
}

// Is сообщает, что принципал аутентифицирован и имеет указанную роль.
func (p Principal) Is(role Role) bool {
	return !p.IsAnonymous() && p.Role == role
}
