package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"quizhub/internal/common"
	"quizhub/internal/common/security"
	"quizhub/internal/domain/model"
	"quizhub/internal/platform/config"
)

func TestMain(m *testing.M) {
	config.Load()
	security.InitJWT()
	os.Exit(m.Run())
}

func validSignup() SignupRequest {
	return SignupRequest{Name: "alice", Fullname: "Alice A", Email: "alice@example.com", Password: "hunter22"}
}

func TestSignup(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo)

	result, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if result.UserID == "" || result.Token == "" {
		t.Fatalf("result = %+v, want non-empty user id and token", result)
	}

	stored := userRepo.users[result.UserID]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.HashedPassword == "hunter22" || stored.HashedPassword == "" {
		t.Errorf("password stored without hashing")
	}
	if stored.Level != model.InitialLevel || stored.XPToNextLevel != model.InitialXPToNextLevel {
		t.Errorf("fresh user progression = level %d / next %d, want %d / %d",
			stored.Level, stored.XPToNextLevel, model.InitialLevel, model.InitialXPToNextLevel)
	}
}

func TestSignupMissingFields(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	for _, mutate := range []func(*SignupRequest){
		func(r *SignupRequest) { r.Name = "" },
		func(r *SignupRequest) { r.Fullname = "" },
		func(r *SignupRequest) { r.Email = "" },
		func(r *SignupRequest) { r.Password = "" },
	} {
		req := validSignup()
		mutate(&req)
		if _, err := svc.Signup(context.Background(), req); !errors.Is(err, common.ErrValidation) {
			t.Errorf("Signup(%+v) err = %v, want ErrValidation", req, err)
		}
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	req := validSignup()
	req.Email = "other@example.com"
	if _, err := svc.Signup(context.Background(), req); !errors.Is(err, common.ErrConflict) {
		t.Fatalf("duplicate signup err = %v, want ErrConflict", err)
	}
}

func TestLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo)
	signedUp, err := svc.Signup(context.Background(), validSignup())
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	result, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.UserID != signedUp.UserID {
		t.Errorf("login user id = %s, want %s", result.UserID, signedUp.UserID)
	}
	if result.Token == "" {
		t.Errorf("expected a session token")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	if _, err := svc.Signup(context.Background(), validSignup()); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "wrong"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("wrong password err = %v, want ErrUnauthorized", err)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{Username: "nobody", Password: "hunter22"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("unknown user err = %v, want ErrUnauthorized", err)
	}
}
