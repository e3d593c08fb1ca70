package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func newTestFS() fstest.MapFS {
	return fstest.MapFS{
		"data/game_config.yaml": &fstest.MapFile{Data: []byte("window:\n  width: 800\n")},
		"data/kanji_pool.yaml":  &fstest.MapFile{Data: []byte("bands: []\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(newTestFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	// 重置状态以避免影响其他测试
	Init(nil)
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	Init(nil)

	_, err := ReadFile("data/game_config.yaml")
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if Exists("data/game_config.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 测试路径标准化和前缀检查
func TestReadFile(t *testing.T) {
	Init(newTestFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"标准路径", "data/game_config.yaml", false},
		{"带 ./ 前缀", "./data/game_config.yaml", false},
		{"未知前缀", "assets/game_config.yaml", true},
		{"文件不存在", "data/missing.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && len(data) == 0 {
				t.Errorf("ReadFile(%q) returned empty data", tt.path)
			}
		})
	}
}

// TestGlob 测试文件匹配
func TestGlob(t *testing.T) {
	Init(newTestFS())
	defer Init(nil)

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 matches, got %d: %v", len(matches), matches)
	}

	if !Exists("data/kanji_pool.yaml") {
		t.Error("Expected data/kanji_pool.yaml to exist")
	}
}
