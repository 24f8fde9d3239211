package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"nightshift/config"
	"nightshift/handlers"
)

// GetConfigHandler は現在の設定を返します
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(config.GetConfig())
	}
}

// SaveConfigHandler は設定を保存します。変更は次回起動時に反映されます。
func SaveConfigHandler(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if err := json.NewDecoder(r.Body).Decode(&newCfg); err != nil {
			handlers.WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		// password is never sent to the browser, keep the stored one
		if newCfg.API.Password == "" {
			newCfg.API.Password = config.GetConfig().API.Password
		}
		if newCfg.API.BaseURL == "" {
			handlers.WriteJSONError(w, "API base URL is required", http.StatusBadRequest)
			return
		}
		if err := validateFolderPath(filepath.Dir(newCfg.Cache.Path)); err != nil {
			handlers.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := config.SaveConfig(newCfg, path); err != nil {
			log.Printf("Error saving config: %v", err)
			handlers.WriteJSONError(w, "Failed to save settings.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Settings saved."})
	}
}

// フォルダパスを検証するヘルパー関数
func validateFolderPath(path string) error {
	if path == "" || path == "." {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("folder not found: " + path)
		}
		log.Printf("Error checking folder path: %v", err)
		return errors.New("failed to check the folder path")
	}
	if !info.IsDir() {
		return errors.New("not a folder: " + path)
	}
	return nil
}
