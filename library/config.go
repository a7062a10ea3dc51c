package library

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Config is the serialized form of a library.
type Config struct {
	Dir       string            `yaml:"dir"`
	Documents []Entry           `yaml:"documents"`
	Aliases   map[string]string `yaml:"aliases"`
}

// Load reads a library from the YAML file filename. A relative dir in the
// file is interpreted relative to the directory the file is in.
func Load(filename string) (*Library, error) {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config

	err = yaml.UnmarshalStrict(buf, &cfg)
	if err != nil {
		return nil, fmt.Errorf("load config %v failed: %w", filename, err)
	}

	dir := cfg.Dir
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(filename), dir)
	}

	lib, err := New(dir, cfg.Documents, cfg.Aliases)
	if err != nil {
		return nil, fmt.Errorf("config %v: %w", filename, err)
	}

	return lib, nil
}

// DefaultDir returns the directory the built-in library is expected in.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("OneDrive", "Sinless")
	}

	return filepath.Join(home, "OneDrive", "Sinless")
}

var defaultDocuments = []Entry{
	{Key: "core", Path: "Sinless.pdf"},
	{Key: "quickstart", Path: "Sinless_Quickstart.pdf"},
	{Key: "character-sheet", Path: "SINLESS-Character-Sheet-High-Res.pdf"},
	{Key: "character-worksheet", Path: "Sinless_Character_Worksheet_v2.pdf"},
	{Key: "bounty", Path: "BilionaireBountyDigital.pdf"},
	{Key: "asset-pack-1", Path: "Asset Pack 1.pdf"},
	{Key: "asset-pack-2", Path: "Asset Pack 2.pdf"},
	{Key: "gear-tarot", Path: "gear tarot cards.pdf"},
	{Key: "brand-record", Path: "brandrecord.pdf"},
	{Key: "sector-tracker", Path: "sectortracker(blan)k.pdf"},
}

var defaultAliases = map[string]string{
	"crb":         "core",
	"rulebook":    "core",
	"core":        "core",
	"quick":       "quickstart",
	"qs":          "quickstart",
	"quickstart":  "quickstart",
	"billionaire": "bounty",
	"bounty":      "bounty",
	"bb":          "bounty",
	"sheet":       "character-sheet",
	"worksheet":   "character-worksheet",
	"brand":       "brand-record",
	"sector":      "sector-tracker",
	"assets1":     "asset-pack-1",
	"assets2":     "asset-pack-2",
	"gear":        "gear-tarot",
}

// Default returns the built-in Sinless library with all documents in dir.
func Default(dir string) *Library {
	lib, err := New(dir, defaultDocuments, defaultAliases)
	if err != nil {
		// the built-in tables are consistent
		panic(err)
	}

	return lib
}
