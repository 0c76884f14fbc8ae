package internal

import (
	"bytes"
	"github.com/xiaobogaga/jackc/logger"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	jackFileExt = ".jack"
	vmFileExt   = ".vm"
)

// Compile compiles the single class in src and writes its vm code to out. The first
// error stops the compilation and comes back as a *CompileError.
func Compile(src []byte, out io.Writer) error {
	parser := NewParser(src, out)
	err := parser.Parse()
	if err != nil {
		return &CompileError{Line: parser.errorLine(err), Err: err}
	}
	return nil
}

// Result is the outcome of compiling one jack file.
type Result struct {
	Source string
	Target string
	Code   []byte
	Err    error
}

// CompileFile compiles the jack file at path. With save set, the code is written next to
// the source as <Name>.vm, and only if the whole file compiled.
func CompileFile(path string, save bool) *Result {
	result := &Result{Source: path, Target: strings.TrimSuffix(path, jackFileExt) + vmFileExt}
	logger.Printf("compiler: compile %s\n", path)
	src, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}
	var code bytes.Buffer
	err = Compile(src, &code)
	if err != nil {
		if compileErr, ok := err.(*CompileError); ok {
			compileErr.Filename = path
		}
		result.Err = err
		return result
	}
	result.Code = code.Bytes()
	if !save {
		return result
	}
	logger.Printf("compiler: save vm file %s\n", result.Target)
	result.Err = os.WriteFile(result.Target, result.Code, 0644)
	return result
}

// CompilePaths compiles every jack file named by paths, a directory standing for all jack
// files directly inside it. Files are independent of each other, up to jobs of them are
// compiled at the same time. Results come back in path order, a failing file doesn't stop
// the others.
func CompilePaths(paths []string, jobs int, save bool) ([]*Result, error) {
	files, err := JackFiles(paths)
	if err != nil {
		return nil, err
	}
	if jobs < 1 {
		jobs = 1
	}
	results := make([]*Result, len(files))
	var group errgroup.Group
	group.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			results[i] = CompileFile(file, save)
			return nil
		})
	}
	_ = group.Wait()
	return results, nil
}

// JackFiles expands paths into the list of jack files to compile. Files inside a
// directory are sorted by name.
func JackFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		var dirFiles []string
		for _, entry := range entries {
			// Skip not-jack file.
			if entry.IsDir() || !isJackFile(entry.Name()) {
				continue
			}
			dirFiles = append(dirFiles, filepath.Join(path, entry.Name()))
		}
		slices.Sort(dirFiles)
		files = append(files, dirFiles...)
	}
	return files, nil
}

func isJackFile(fileName string) bool {
	return filepath.Ext(fileName) == jackFileExt
}
