package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"wardrobe/internal/models"

	"github.com/google/uuid"
)

const (
	loginPath        = "/users/login"
	signupPath       = "/users/signup"
	uploadImagePath  = "/images/upload"
	clothingPath     = "/clothing"
	clothingUserPath = "/clothing/user/%s"
	clothingByIDPath = "/clothing/%s"
	outfitsPath      = "/outfits"
	outfitsUserPath  = "/outfits/user/%s"
	outfitByIDPath   = "/outfits/%s"
	suggestPath      = "/ai/suggest-outfit/%s"
	historyPath      = "/history"
	historyUserPath  = "/history/user/%s"
)

// Client talks to the wardrobe backend. The backend owns all durable state;
// this client is a thin request/response adapter and never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}

	return nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	body := map[string]string{"email": email, "password": password}
	user := &models.User{}
	if err := c.do(ctx, http.MethodPost, loginPath, body, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) Signup(ctx context.Context, username, email, password string) (*models.User, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	user := &models.User{}
	if err := c.do(ctx, http.MethodPost, signupPath, body, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadImage streams a file to the backend image store and returns the URL
// the backend assigned to it.
func (c *Client) UploadImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to copy file into request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadImagePath, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	return result.URL, nil
}

func (c *Client) AddClothingItem(ctx context.Context, item models.ClothingItem) (*models.ClothingItem, error) {
	saved := &models.ClothingItem{}
	if err := c.do(ctx, http.MethodPost, clothingPath, item, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

func (c *Client) ListClothingItems(ctx context.Context, userID string) ([]models.ClothingItem, error) {
	var items []models.ClothingItem
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf(clothingUserPath, userID), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) DeleteClothingItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf(clothingByIDPath, id), nil, nil)
}

func (c *Client) CreateOutfit(ctx context.Context, name, userID string, itemIDs []string) (*models.Outfit, error) {
	body := map[string]interface{}{
		"name":   name,
		"userId": userID,
		"items":  itemIDs,
	}
	outfit := &models.Outfit{}
	if err := c.do(ctx, http.MethodPost, outfitsPath, body, outfit); err != nil {
		return nil, err
	}
	return outfit, nil
}

func (c *Client) ListOutfits(ctx context.Context, userID string) ([]models.Outfit, error) {
	var outfits []models.Outfit
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf(outfitsUserPath, userID), nil, &outfits); err != nil {
		return nil, err
	}
	return outfits, nil
}

func (c *Client) DeleteOutfit(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf(outfitByIDPath, id), nil, nil)
}

// SuggestOutfit asks the AI endpoint for an outfit. The response must be a
// JSON array; anything else comes back as ErrNotSuggestion so the caller can
// keep its current composition.
func (c *Client) SuggestOutfit(ctx context.Context, userID string) ([]models.ClothingItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+fmt.Sprintf(suggestPath, userID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build suggestion request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggestion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestion response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotSuggestion
	}

	var items []models.ClothingItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSuggestion, err)
	}
	return items, nil
}

func (c *Client) RecordWear(ctx context.Context, entry models.OutfitHistory) (*models.OutfitHistory, error) {
	saved := &models.OutfitHistory{}
	if err := c.do(ctx, http.MethodPost, historyPath, entry, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

func (c *Client) ListOutfitHistory(ctx context.Context, userID string) ([]models.OutfitHistory, error) {
	var entries []models.OutfitHistory
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf(historyUserPath, userID), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
