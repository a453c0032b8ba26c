package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownActorRole возвращается при разборе неизвестной роли
var ErrUnknownActorRole = errors.New("domain: unknown actor role")

// ActorRole роль инициатора действия над бронированием
type ActorRole string

const (
	ActorMember  ActorRole = "member"
	ActorTrainer ActorRole = "trainer"
	ActorAdmin   ActorRole = "admin"
	ActorSystem  ActorRole = "system"
)

// ParseActorRole конвертирует строку в ActorRole
func ParseActorRole(s string) (ActorRole, error) {
	role := ActorRole(s)
	switch role {
	case ActorMember, ActorTrainer, ActorAdmin, ActorSystem:
		return role, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownActorRole, s)
	}
}

// Actor инициатор действия; ID - произвольная строка, попадает в журнал изменений как есть
type Actor struct {
	ID   string
	Role ActorRole
}

// String форматирует актора для журнала изменений
func (a Actor) String() string {
	if a.Role == "" {
		return a.ID
	}
	return fmt.Sprintf("%s (%s)", a.ID, a.Role)
}
