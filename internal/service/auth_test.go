package service

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/kael37/PixelLedger/internal/store"
)

func newAuthForTest(t *testing.T) (*AuthService, *store.Store) {
	t.Helper()
	viper.Set("jwt.secret", "test-secret")
	viper.Set("jwt.expire_hours", 1)
	st := store.New(nil)
	return NewAuthService(st), st
}

func TestLoginAcceptsFactoryPasswordsWhileDefault(t *testing.T) {
	auth, _ := newAuthForTest(t)

	for _, p := range []string{"8888", "admin"} {
		token, isDefault, err := auth.Login(p)
		if err != nil {
			t.Fatalf("Login(%q): %v", p, err)
		}
		if token == "" {
			t.Errorf("Login(%q): empty token", p)
		}
		if !isDefault {
			t.Errorf("Login(%q): isDefault = false, want true", p)
		}
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	auth, _ := newAuthForTest(t)
	if _, _, err := auth.Login("wrong"); err == nil {
		t.Error("wrong password accepted")
	}
	if _, _, err := auth.Login(""); err == nil {
		t.Error("empty password accepted")
	}
}

func TestRotationClosesFactoryChannel(t *testing.T) {
	auth, _ := newAuthForTest(t)

	if err := auth.RotatePassword("s3cret"); err != nil {
		t.Fatalf("RotatePassword: %v", err)
	}

	// 轮换后出厂口令立刻失效
	for _, p := range []string{"8888", "admin"} {
		if _, _, err := auth.Login(p); err == nil {
			t.Errorf("factory password %q still accepted after rotation", p)
		}
	}

	// 新口令立刻可登录，且不再带默认标记
	token, isDefault, err := auth.Login("s3cret")
	if err != nil {
		t.Fatalf("Login with new password: %v", err)
	}
	if token == "" {
		t.Error("empty token")
	}
	if isDefault {
		t.Error("isDefault = true after rotation")
	}
}

func TestRotationIsObservableImmediately(t *testing.T) {
	auth, st := newAuthForTest(t)

	if err := st.UpdatePassword("direct"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if _, _, err := auth.Login("direct"); err != nil {
		t.Errorf("store-level rotation not visible to login: %v", err)
	}
}
