package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"studywithme/internal/core/model"
)

// SettingsFileName is the config file kept in the resource directory.
const SettingsFileName = "settings.json"

type jsonSettings struct {
	WorkTime       int    `json:"work_time"`
	BreakTime      int    `json:"break_time"`
	NumSessions    int    `json:"num_sessions"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	LidCon         int    `json:"lid_con"`
	AssetDirectory string `json:"asset_directory"`
	MusicDirectory string `json:"music_directory"`
	AlarmSound     string `json:"alarm_sound"`
	FinalAlarm     bool   `json:"final_alarm"`
	Display        string `json:"display"`
	Notifications  bool   `json:"notifications"`
}

// defaultSettings returns the file contents written on first start.
func defaultSettings(resourceDir string) jsonSettings {
	return jsonSettings{
		WorkTime:       50,
		BreakTime:      10,
		NumSessions:    5,
		Width:          800,
		Height:         500,
		LidCon:         0,
		AssetDirectory: filepath.Join(resourceDir, "sound"),
		MusicDirectory: "lofi",
		AlarmSound:     "bell1.mp3",
		FinalAlarm:     true,
		Display:        string(model.DisplayWindow),
		Notifications:  true,
	}
}

// LoadSettings reads settings.json from resourceDir, writing a default file
// first if none exists. A field that is missing, mistyped or out of range
// keeps its default; a file that cannot be parsed at all is an error.
func LoadSettings(resourceDir string) (model.Config, error) {
	settings := defaultSettings(resourceDir)
	configPath := filepath.Join(resourceDir, SettingsFileName)

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return model.Config{}, fmt.Errorf("read settings file: %w", err)
		}
		if err := writeSettings(configPath, settings); err != nil {
			return model.Config{}, err
		}
		log.Printf("created default settings at %s", configPath)
		return settings.toConfig(), nil
	}

	normalized, err := normalizeJSON(rawData)
	if err != nil {
		return model.Config{}, fmt.Errorf("parse settings file %s: %w", configPath, err)
	}
	var document yaml.Node
	if err := yaml.Unmarshal(normalized, &document); err != nil {
		return model.Config{}, fmt.Errorf("parse settings file %s: %w", configPath, err)
	}
	if len(document.Content) == 0 {
		return model.Config{}, fmt.Errorf("parse settings file %s: empty document", configPath)
	}
	root := document.Content[0]
	if root.Kind != yaml.MappingNode {
		return model.Config{}, fmt.Errorf("parse settings file %s: top level is not an object", configPath)
	}

	applySettingsNode(&settings, root)
	return settings.toConfig(), nil
}

// normalizeJSON re-encodes a JSON document in the subset YAML reads
// identically: escapes such as \/ are resolved and integral numbers like
// 25.0 are written as 25.
func normalizeJSON(rawData []byte) ([]byte, error) {
	if !json.Valid(rawData) {
		return nil, errors.New("invalid json")
	}
	var decoded any
	if err := json.Unmarshal(rawData, &decoded); err != nil {
		return nil, err
	}
	return json.Marshal(decoded)
}

func writeSettings(configPath string, settings jsonSettings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	serialized, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings json: %w", err)
	}
	if err := os.WriteFile(configPath, append(serialized, '\n'), 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func applySettingsNode(settings *jsonSettings, root *yaml.Node) {
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		switch key {
		case "work_time":
			decodePositive(value, key, &settings.WorkTime)
		case "break_time":
			decodePositive(value, key, &settings.BreakTime)
		case "num_sessions":
			decodePositive(value, key, &settings.NumSessions)
		case "width":
			decodePositive(value, key, &settings.Width)
		case "height":
			decodePositive(value, key, &settings.Height)
		case "lid_con":
			decodeLidControl(value, &settings.LidCon)
		case "asset_directory":
			decodeString(value, key, &settings.AssetDirectory)
		case "music_directory":
			decodeString(value, key, &settings.MusicDirectory)
		case "alarm_sound":
			decodeString(value, key, &settings.AlarmSound)
		case "final_alarm":
			decodeBool(value, key, &settings.FinalAlarm)
		case "notifications":
			decodeBool(value, key, &settings.Notifications)
		case "display":
			var display string
			if value.Kind == yaml.ScalarNode && value.Decode(&display) == nil &&
				(model.Display(display) == model.DisplayWindow || model.Display(display) == model.DisplayTerminal) {
				settings.Display = display
				continue
			}
			log.Printf("ignoring invalid display %q, using %q", value.Value, settings.Display)
		}
	}
}

func decodePositive(value *yaml.Node, key string, target *int) {
	var number int
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!int" && value.Decode(&number) == nil && number > 0 {
		*target = number
		return
	}
	log.Printf("ignoring invalid %s %q, using %d", key, value.Value, *target)
}

func decodeString(value *yaml.Node, key string, target *string) {
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!str" && value.Value != "" {
		*target = value.Value
		return
	}
	log.Printf("ignoring invalid %s %q, using %q", key, value.Value, *target)
}

func decodeBool(value *yaml.Node, key string, target *bool) {
	var flag bool
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!bool" && value.Decode(&flag) == nil {
		*target = flag
		return
	}
	log.Printf("ignoring invalid %s %q, using %v", key, value.Value, *target)
}

// lid_con is historically 0 or 1; booleans are accepted too.
func decodeLidControl(value *yaml.Node, target *int) {
	var number int
	var flag bool
	switch {
	case value.Kind != yaml.ScalarNode:
	case value.ShortTag() == "!!int" && value.Decode(&number) == nil && (number == 0 || number == 1):
		*target = number
		return
	case value.ShortTag() == "!!bool" && value.Decode(&flag) == nil:
		*target = 0
		if flag {
			*target = 1
		}
		return
	}
	log.Printf("ignoring invalid lid_con %q, using %d", value.Value, *target)
}

func (settings jsonSettings) toConfig() model.Config {
	return model.Config{
		WorkMinutes:    settings.WorkTime,
		BreakMinutes:   settings.BreakTime,
		Sessions:       settings.NumSessions,
		Width:          settings.Width,
		Height:         settings.Height,
		LidControl:     settings.LidCon != 0,
		AssetDirectory: settings.AssetDirectory,
		MusicDirectory: underAssets(settings.AssetDirectory, settings.MusicDirectory),
		AlarmSound:     underAssets(settings.AssetDirectory, settings.AlarmSound),
		FinalAlarm:     settings.FinalAlarm,
		Display:        model.Display(settings.Display),
		Notifications:  settings.Notifications,
	}
}

func underAssets(assetDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(assetDir, name)
}
