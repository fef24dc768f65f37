package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/dbx"
	"github.com/dmitrijs2005/blogauth/internal/server/models"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/repomanager"
)

// Every store call below runs under its own storeTimeout deadline. Absent
// records come back as (nil, nil).

func (s *CredentialService) findUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.repomanager.Users(s.repomanager.Conn()).FindByEmail(ctx, email)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("find user", err)
	}
	return user, nil
}

func (s *CredentialService) findUserByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.repomanager.Users(s.repomanager.Conn()).FindByID(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("find user", err)
	}
	return user, nil
}

func (s *CredentialService) findSalt(ctx context.Context, userID string) (*models.Salt, error) {
	ctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	salt, err := s.repomanager.Salts(s.repomanager.Conn()).FindByUserID(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("find salt", err)
	}
	return salt, nil
}

// createUserWithSalt inserts the user and then its salt. With a
// transactional backend both inserts commit or neither does. Otherwise a
// failed salt insert leaves the user behind and is reported as
// PartialSignupFailure.
func (s *CredentialService) createUserWithSalt(ctx context.Context, user *models.User, salt string) (*models.User, error) {
	ctx, cancel := dbx.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if txm, ok := s.repomanager.(repomanager.Transactional); ok {
		var created *models.User
		err := txm.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
			u, err := s.repomanager.Users(tx).Create(ctx, user)
			if err != nil {
				return err
			}
			if _, err := s.repomanager.Salts(tx).Create(ctx, u.ID, salt); err != nil {
				return err
			}
			created = u
			return nil
		})
		if err != nil {
			return nil, createError(err)
		}
		return created, nil
	}

	created, err := s.repomanager.Users(s.repomanager.Conn()).Create(ctx, user)
	if err != nil {
		return nil, createError(err)
	}
	if _, err := s.repomanager.Salts(s.repomanager.Conn()).Create(ctx, created.ID, salt); err != nil {
		s.logger.Error(ctx, "user created without salt", "svc", OpSignUp, "user_id", created.ID, "error", err.Error())
		return nil, common.E(common.KindPartialSignupFailure, "user created without salt", err)
	}
	return created, nil
}

func createError(err error) error {
	if errors.Is(err, common.ErrorAlreadyExists) {
		return common.E(common.KindConflict, "User Already Exists", nil)
	}
	return storeError("create user", err)
}

func storeError(msg string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return common.E(common.KindPersistence, "store timeout", err)
	}
	return common.E(common.KindPersistence, msg, err)
}
