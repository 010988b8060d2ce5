package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/intro.yaml": &fstest.MapFile{Data: []byte("bootInterval: 0.18\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	// 重置状态
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	Init(nil)
	if IsInitialized() {
		t.Error("Init(nil) should leave the package uninitialized")
	}
}

// TestOpenNotInitialized 测试未初始化时调用 Open
func TestOpenNotInitialized(t *testing.T) {
	initialized = false

	_, err := Open("data/intro.yaml")
	if err == nil {
		t.Fatal("Expected error when calling Open() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestReadFile 测试读取嵌入文件
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"标准路径", "data/intro.yaml", false},
		{"带 ./ 前缀", "./data/intro.yaml", false},
		{"文件不存在", "data/missing.yaml", true},
		{"未知前缀", "assets/intro.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ReadFile(%q) expected error", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%q) unexpected error: %v", tt.path, err)
			}
			if string(data) != "bootInterval: 0.18\n" {
				t.Errorf("unexpected content %q", data)
			}
		})
	}
}

// TestExists 测试文件存在性检查
func TestExists(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	if !Exists("data/intro.yaml") {
		t.Error("data/intro.yaml should exist")
	}
	if Exists("data/nope.yaml") {
		t.Error("data/nope.yaml should not exist")
	}
	if Exists("/etc/passwd") {
		t.Error("paths outside data/ should never resolve")
	}
}
