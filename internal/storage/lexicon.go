package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/LJTian/NewsLens/internal/detector"
	"gorm.io/datatypes"
)

// 词表名称
const (
	LexiconClickbait        = "clickbait"
	LexiconSensational      = "sensational"
	LexiconCredibility      = "credibility"
	LexiconTrustedSources   = "trusted_sources"
	LexiconUntrustedSources = "untrusted_sources"
)

// Lexicon 一张词表，Entries 为有序 JSON 数组（顺序决定匹配优先级）
type Lexicon struct {
	Name    string         `gorm:"primaryKey;size:64" json:"name"`
	Entries datatypes.JSON `gorm:"type:jsonb" json:"entries"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EnsureLexicon 确保某张词表存在；已存在时不覆盖
func (s *Store) EnsureLexicon(name string, entries []string) (*Lexicon, error) {
	lx := &Lexicon{}
	if err := s.DB.Where("name = ?", name).First(lx).Error; err == nil {
		return lx, nil
	}

	bs, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	lx = &Lexicon{Name: name, Entries: datatypes.JSON(bs)}
	if err := s.DB.Create(lx).Error; err != nil {
		return nil, err
	}
	return lx, nil
}

// SeedLexicons 用给定词表初始化数据库中缺失的表
func (s *Store) SeedLexicons(lex detector.Lexicons) error {
	if s.DB == nil {
		return nil
	}
	for name, entries := range lexiconLists(&lex) {
		if _, err := s.EnsureLexicon(name, *entries); err != nil {
			return fmt.Errorf("storage: seed lexicon %s: %w", name, err)
		}
	}
	return nil
}

// ApplyLexicons 用数据库中的非空词表覆盖 base。只在启动时调用一次，运行期间词表不变
func (s *Store) ApplyLexicons(base detector.Lexicons) (detector.Lexicons, error) {
	out := base.Clone()
	if s.DB == nil {
		return out, nil
	}

	var rows []Lexicon
	if err := s.DB.Find(&rows).Error; err != nil {
		return out, fmt.Errorf("storage: load lexicons: %w", err)
	}

	lists := lexiconLists(&out)
	for _, row := range rows {
		target, ok := lists[row.Name]
		if !ok {
			continue
		}
		entries, err := decodeEntries(row.Entries)
		if err != nil {
			return out, fmt.Errorf("storage: decode lexicon %s: %w", row.Name, err)
		}
		if len(entries) > 0 {
			*target = entries
		}
	}
	return out, nil
}

func lexiconLists(l *detector.Lexicons) map[string]*[]string {
	return map[string]*[]string{
		LexiconClickbait:        &l.Clickbait,
		LexiconSensational:      &l.Sensational,
		LexiconCredibility:      &l.Credibility,
		LexiconTrustedSources:   &l.TrustedSources,
		LexiconUntrustedSources: &l.UntrustedSources,
	}
}

func decodeEntries(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
