package service

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/kael37/PixelLedger/internal/store"
)

// 出厂默认口令。仅在 IsDefaultPassword 标记还在时参与比对，
// 用户轮换过一次密码后这条通道即关闭
var factoryPasswords = []string{"8888", "admin"}

type AuthService struct {
	store *store.Store
}

func NewAuthService(st *store.Store) *AuthService {
	return &AuthService{store: st}
}

// Login 校验口令并颁发 Token。
// 返回的 isDefault 告诉前端是否要强制跳转改密页
func (s *AuthService) Login(password string) (token string, isDefault bool, err error) {
	user := s.store.Snapshot().User

	if !s.verify(user.PasswordHash, user.IsDefaultPassword, password) {
		return "", false, errors.New("invalid credentials") // 模糊报错为了安全
	}

	token, err = s.generateToken(user.Username)
	if err != nil {
		return "", false, err
	}
	return token, user.IsDefaultPassword, nil
}

// RotatePassword 设置新密码（bcrypt 落库，出厂标记清除）
func (s *AuthService) RotatePassword(newPassword string) error {
	return s.store.UpdatePassword(newPassword)
}

func (s *AuthService) verify(hash string, isDefault bool, password string) bool {
	if isDefault {
		for _, p := range factoryPasswords {
			if subtle.ConstantTimeCompare([]byte(p), []byte(password)) == 1 {
				return true
			}
		}
	}
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *AuthService) generateToken(username string) (string, error) {
	secret := viper.GetString("jwt.secret")
	expireHours := viper.GetInt("jwt.expire_hours")
	if expireHours <= 0 {
		expireHours = 24
	}

	claims := jwt.MapClaims{
		"user": username,
		"exp":  time.Now().Add(time.Hour * time.Duration(expireHours)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
