package handlers

import (
	"encoding/json"
	"fmt"
	"os"
)

// Book is one record of the books data file.
type Book struct {
	Title            string   `json:"title"`
	ISBN             string   `json:"isbn"`
	PageCount        int      `json:"pageCount"`
	ThumbnailURL     string   `json:"thumbnailUrl"`
	ShortDescription string   `json:"shortDescription"`
	LongDescription  string   `json:"longDescription"`
	Status           string   `json:"status"`
	Authors          []string `json:"authors"`
	Categories       []string `json:"categories"`
}

// Episode is one record of the episodes data file.
type Episode struct {
	ID      int    `json:"id"`
	URL     string `json:"url"`
	Name    string `json:"name"`
	Season  int    `json:"season"`
	Number  int    `json:"number"`
	Type    string `json:"type"`
	Airdate string `json:"airdate"`
	Airtime string `json:"airtime"`
	Runtime int    `json:"runtime"`
	Summary string `json:"summary"`
	Image   Image  `json:"image"`
	Rating  Rating `json:"rating"`
}

type Image struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

type Rating struct {
	Average float64 `json:"average"`
}

// LoadBooks decodes the JSON array of books at path.
func LoadBooks(path string) ([]Book, error) {
	var books []Book
	if err := loadJSON(path, &books); err != nil {
		return nil, err
	}

	return books, nil
}

// LoadEpisodes decodes the JSON array of episodes at path.
func LoadEpisodes(path string) ([]Episode, error) {
	var episodes []Episode
	if err := loadJSON(path, &episodes); err != nil {
		return nil, err
	}

	return episodes, nil
}

// Field names are matched case-insensitively by encoding/json.
func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}
