package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"
)

// CaptchaVerifier checks client tokens against an external verification
// endpoint (Google reCAPTCHA siteverify by default). The endpoint URL is
// injected so tests can point it at a local server.
type CaptchaVerifier struct {
	secret    string
	verifyURL string
	client    *http.Client
}

func NewCaptchaVerifier(secret, verifyURL string) *CaptchaVerifier {
	return &CaptchaVerifier{
		secret:    secret,
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify sends the client token to the verification service.
// Every failure mode counts as a rejected captcha: empty token, network
// error, timeout, non-JSON body. Callers never see an error, only false.
func (v *CaptchaVerifier) Verify(token string) bool {
	if token == "" {
		return false
	}

	payload := url.Values{
		"secret":   {v.secret},
		"response": {token},
	}

	resp, err := v.client.PostForm(v.verifyURL, payload)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false
	}

	var result siteverifyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return false
	}
	return result.Success
}
