package mux

import (
	"time"

	"deluxeblackjack-server/internal/config"

	grecaptcha "github.com/ezzarghili/recaptcha-go"
	"github.com/sirupsen/logrus"
)

type recaptcha interface {
	// Verify will verify the token is valid
	Verify(token string) error
}

type noopRecaptcha struct{}

func (noopRecaptcha) Verify(string) error {
	return nil
}

func newRecaptcha() recaptcha {
	secret := config.Instance().RecaptchaSecret
	if secret == "" {
		logrus.Warn("recaptcha secret not set, signup verification is disabled")
		return noopRecaptcha{}
	}

	captcha, err := grecaptcha.NewReCAPTCHA(secret, grecaptcha.V3, 10*time.Second)
	if err != nil {
		logrus.WithError(err).Fatal("could not load recaptcha")
	}

	return &captcha
}
