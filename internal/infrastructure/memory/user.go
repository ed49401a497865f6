package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ scope }

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	key := strings.ToLower(u.Email)
	return r.write(ctx, func(st *state) error {
		if _, ok := st.users[key]; ok {
			return domain.ErrDuplicate
		}
		st.users[key] = *u
		return nil
	})
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.read(func(st *state) {
		if u, ok := st.users[strings.ToLower(email)]; ok {
			out = &u
		}
	})
	return out, nil
}
