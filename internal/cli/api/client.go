// Package api — HTTP-клиент серверного API PassVault.
// Покрывает два внешних контракта приложения: провайдера идентичности
// (register/login/whoami/logout/reset) и хранилище записей (CRUD + подписка).
package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	clirepo "PassVault/internal/cli/repo"
)

// Identity — аутентифицированный принципал, как его видит клиент.
type Identity struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// Record — запись хранилища в представлении клиента.
type Record struct {
	ID        string    `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Secret    string    `json:"secret"`
	CreatedAt time.Time `json:"created_at"`
}

// Error — отказ сервера с человекочитаемым сообщением.
// Формы аутентификации показывают Message дословно.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Client — клиент API с cookie-аутентификацией и файловым хранилищем токена.
type Client struct {
	baseURL string
	token   string
	store   clirepo.TokenStore
	http    *http.Client
}

// NewClient создаёт клиент. Токен из хранилища подхватывается, если он там есть.
func NewClient(baseURL string, store clirepo.TokenStore) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		http:    &http.Client{},
	}
	if tok, err := store.Load(); err == nil {
		c.token = tok
	}
	return c
}

// postJSON выполняет POST с JSON-телом. Токен, если есть, уходит auth-cookie.
func (c *Client) postJSON(ctx context.Context, path string, payload any) (*http.Response, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Cookie", "auth_token="+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

// serverError разбирает тело {"error": "..."} в *Error.
func serverError(resp *http.Response, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return &Error{Status: resp.StatusCode, Message: e.Error}
	}
	return &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
}

// persistAuth извлекает auth-cookie из ответа и сохраняет токен.
func (c *Client) persistAuth(resp *http.Response) error {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "auth_token" && cookie.Value != "" {
			c.token = cookie.Value
			return c.store.Save(cookie.Value)
		}
	}
	return fmt.Errorf("no auth cookie in response")
}

// Login аутентифицирует по email/паролю и сохраняет токен.
func (c *Client) Login(ctx context.Context, email, password string) (*Identity, error) {
	resp, body, err := c.postJSON(ctx, "/api/user/login", map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp, body)
	}
	if err := c.persistAuth(resp); err != nil {
		return nil, err
	}
	var id Identity
	if err := json.Unmarshal(body, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Register создаёт учётную запись; созданная идентичность сразу аутентифицирована.
func (c *Client) Register(ctx context.Context, email, password string) (*Identity, error) {
	resp, body, err := c.postJSON(ctx, "/api/user/register", map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp, body)
	}
	if err := c.persistAuth(resp); err != nil {
		return nil, err
	}
	var id Identity
	if err := json.Unmarshal(body, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Whoami возвращает текущую идентичность или nil для анонима.
func (c *Client) Whoami(ctx context.Context) (*Identity, error) {
	resp, body, err := c.postJSON(ctx, "/api/user/whoami", map[string]string{})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, serverError(resp, body)
	}
	var anon struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &anon); err == nil && anon.Result == "anonymous" {
		return nil, nil
	}
	var id Identity
	if err := json.Unmarshal(body, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// SignOut завершает сессию на сервере и забывает токен локально.
func (c *Client) SignOut(ctx context.Context) error {
	resp, body, err := c.postJSON(ctx, "/api/user/logout", map[string]string{})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return serverError(resp, body)
	}
	c.token = ""
	return c.store.Clear()
}

// RequestReset просит сервер отправить письмо восстановления пароля.
func (c *Client) RequestReset(ctx context.Context, email string) error {
	resp, body, err := c.postJSON(ctx, "/api/user/reset", map[string]string{"email": email})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return serverError(resp, body)
	}
	return nil
}

// AddRecord создаёт запись; id и метку времени назначает сервер.
func (c *Client) AddRecord(ctx context.Context, name, username, secret string) (string, error) {
	resp, body, err := c.postJSON(ctx, "/api/vault", map[string]string{
		"name": name, "username": username, "secret": secret,
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusCreated {
		return "", serverError(resp, body)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// DeleteRecord удаляет запись по id. Подтверждения нет, операция необратима.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/vault/"+id, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Cookie", "auth_token="+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return serverError(resp, body)
	}
	return nil
}

// Subscribe открывает живую подписку на партицию текущего пользователя.
// Каждое событие — полный снапшот. Канал закрывается при обрыве потока
// или отмене контекста; переустановка подписки — забота вызывающего.
func (c *Client) Subscribe(ctx context.Context) (<-chan []Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/vault/subscribe", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	if c.token != "" {
		req.Header.Set("Cookie", "auth_token="+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, serverError(resp, body)
	}

	out := make(chan []Record, 8)
	go func() {
		defer close(out)
		defer resp.Body.Close()
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var recs []Record
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &recs); err != nil {
				return
			}
			select {
			case out <- recs:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
