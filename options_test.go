package biovault

import (
	"errors"
	"log/slog"
	"math"
	"testing"
)

func TestStrategy_Constants(t *testing.T) {
	if StrategyProjection != "projection" {
		t.Errorf("StrategyProjection = %s, want projection", StrategyProjection)
	}
	if StrategyScramble != "scramble" {
		t.Errorf("StrategyScramble = %s, want scramble", StrategyScramble)
	}
}

func TestDefaultEngineConfig(t *testing.T) {
	cfg := defaultEngineConfig()

	if cfg.degree != 8 {
		t.Errorf("degree = %d, want 8", cfg.degree)
	}
	if cfg.vaultSize != 250 {
		t.Errorf("vaultSize = %d, want 250", cfg.vaultSize)
	}
	if cfg.chaffDistance != 15 {
		t.Errorf("chaffDistance = %d, want 15", cfg.chaffDistance)
	}
	if cfg.matchTolerance != 10 {
		t.Errorf("matchTolerance = %v, want 10", cfg.matchTolerance)
	}
	if cfg.ransacIterations != 2000 {
		t.Errorf("ransacIterations = %d, want 2000", cfg.ransacIterations)
	}
	if cfg.frame != (Frame{Width: 600, Height: 600}) {
		t.Errorf("frame = %+v, want 600x600", cfg.frame)
	}
	if cfg.fillerMax != 1000 {
		t.Errorf("fillerMax = %d, want 1000", cfg.fillerMax)
	}
	if !cfg.helperData {
		t.Error("helperData = false, want true")
	}
	if cfg.alignSweep != 45 || cfg.alignStep != 2 || cfg.alignRadius != 15 || cfg.alignMinScore != 0.1 {
		t.Errorf("alignment = %d/%d/%v/%v, want 45/2/15/0.1",
			cfg.alignSweep, cfg.alignStep, cfg.alignRadius, cfg.alignMinScore)
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := defaultEngineConfig()
	logger := slog.New(slog.DiscardHandler)

	for _, opt := range []Option{
		WithDegree(6),
		WithVaultSize(300),
		WithMinVaultSize(100),
		WithChaffDistance(20),
		WithMatchTolerance(12),
		WithRANSACIterations(500),
		WithFrame(640, 480),
		WithAlignment(30, 1, 12, 0.2),
		WithHelperData(false),
		WithFillerMax(50),
		WithLogger(logger),
	} {
		opt(&cfg)
	}

	if cfg.degree != 6 || cfg.vaultSize != 300 || cfg.minVaultSize != 100 {
		t.Errorf("sizes = %d/%d/%d", cfg.degree, cfg.vaultSize, cfg.minVaultSize)
	}
	if cfg.chaffDistance != 20 || cfg.matchTolerance != 12 || cfg.ransacIterations != 500 {
		t.Errorf("matching = %d/%v/%d", cfg.chaffDistance, cfg.matchTolerance, cfg.ransacIterations)
	}
	if cfg.frame != (Frame{Width: 640, Height: 480}) {
		t.Errorf("frame = %+v", cfg.frame)
	}
	if cfg.alignSweep != 30 || cfg.alignStep != 1 || cfg.alignRadius != 12 || cfg.alignMinScore != 0.2 {
		t.Errorf("alignment = %d/%d/%v/%v", cfg.alignSweep, cfg.alignStep, cfg.alignRadius, cfg.alignMinScore)
	}
	if cfg.helperData || cfg.fillerMax != 50 || cfg.logger != logger {
		t.Error("helperData, fillerMax or logger not applied")
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		option string
	}{
		{"zero degree", []Option{WithDegree(0)}, "degree"},
		{"huge degree", []Option{WithDegree(math.MaxInt)}, "degree"},
		{"degree above max", []Option{WithDegree(257), WithVaultSize(1000)}, "degree"},
		{"vault at floor", []Option{WithVaultSize(18)}, "vault size"},
		{"min above size", []Option{WithMinVaultSize(251)}, "min vault size"},
		{"min at floor", []Option{WithMinVaultSize(18)}, "min vault size"},
		{"zero chaff distance", []Option{WithChaffDistance(0)}, "chaff distance"},
		{"zero tolerance", []Option{WithMatchTolerance(0)}, "match tolerance"},
		{"zero iterations", []Option{WithRANSACIterations(0)}, "RANSAC iterations"},
		{"tall frame", []Option{WithFrame(600, 1001)}, "frame"},
		{"zero filler", []Option{WithFillerMax(0)}, "filler max"},
		{"zero step", []Option{WithAlignment(45, 0, 15, 0.1)}, "alignment"},
		{"score one", []Option{WithAlignment(45, 2, 15, 1)}, "alignment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.opts...)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("NewEngine() error = %v, want ErrInvalidConfig", err)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) || ce.Option != tt.option {
				t.Errorf("ConfigError.Option = %v, want %q", ce, tt.option)
			}
		})
	}
}

func TestNewEngine_DefaultMinVaultSize(t *testing.T) {
	e, err := NewEngine(WithDegree(4))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if e.cfg.minVaultSize != 11 {
		t.Errorf("minVaultSize = %d, want 2*(4+1)+1", e.cfg.minVaultSize)
	}
	if e.Degree() != 4 || e.VaultSize() != 250 {
		t.Errorf("Degree() = %d, VaultSize() = %d", e.Degree(), e.VaultSize())
	}
}

func TestHasherOptions(t *testing.T) {
	cfg := defaultHasherConfig()
	if cfg.length != 256 || cfg.threshold != 0.65 || cfg.strategy != StrategyProjection {
		t.Errorf("defaults = %d/%v/%s", cfg.length, cfg.threshold, cfg.strategy)
	}

	WithHashLength(64)(&cfg)
	WithThreshold(0.7)(&cfg)
	WithStrategy(StrategyScramble)(&cfg)
	WithGrid(32, 200, 1.5)(&cfg)
	if cfg.length != 64 || cfg.threshold != 0.7 || cfg.strategy != StrategyScramble {
		t.Errorf("applied = %d/%v/%s", cfg.length, cfg.threshold, cfg.strategy)
	}
	if cfg.grid.Size != 32 || cfg.grid.Span != 200 || cfg.grid.Sigma != 1.5 {
		t.Errorf("grid = %+v", cfg.grid)
	}
}

func TestHasherPresets(t *testing.T) {
	face, err := NewHasher(FaceHasherOptions()...)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}
	if face.Length() != 128 || face.Threshold() != 0.85 {
		t.Errorf("face preset = %d/%v, want 128/0.85", face.Length(), face.Threshold())
	}

	emb, err := NewHasher(EmbeddingHasherOptions()...)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}
	if emb.Length() != 256 || emb.Threshold() != 0.65 {
		t.Errorf("embedding preset = %d/%v, want 256/0.65", emb.Length(), emb.Threshold())
	}
}
