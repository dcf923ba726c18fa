// Package main provides a shell-like file explorer example using the cmdprompt library.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/nao1215/cmdprompt"
)

func main() {
	fmt.Println("Shell-like File Explorer Example")
	fmt.Println("================================")
	fmt.Println("Commands:")
	fmt.Println("  ls [-path dir]   - List directory contents")
	fmt.Println("  cd -path dir     - Change directory")
	fmt.Println("  cat -file name   - Show file contents")
	fmt.Println("  pwd              - Show current directory")
	fmt.Println("  !command args    - Run an external command")
	fmt.Println("  exit             - Exit")
	fmt.Println()

	var shell *cmdprompt.Shell
	registry := cmdprompt.NewRegistry()
	must(registry.AddFunc("pwd", "print working directory", pwd))
	must(registry.AddFunc("ls", "list directory contents", ls))
	must(registry.AddFunc("cat", "show file contents", cat))
	must(registry.AddFunc("cd", "change directory", func(flags map[string]cmdprompt.Argument) cmdprompt.Result {
		result := cd(flags)
		if result.Kind == cmdprompt.Success {
			shell.Prompt().SetPrefix(prefix())
		}
		return result
	}))
	must(registry.AddFunc("exit", "exit shell", func(map[string]cmdprompt.Argument) cmdprompt.Result {
		return cmdprompt.Quit()
	}))
	must(registry.AddSpecialFunc('!', "run an external command", run))

	shell, err := cmdprompt.NewShell(prefix(), registry)
	if err != nil {
		log.Fatalf("failed to create prompt: %v", err)
	}
	defer shell.Close()

	if err := shell.Run(); err != nil {
		log.Printf("shell stopped: %v", err)
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func prefix() string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "unknown"
	}
	return fmt.Sprintf("shell:%s> ", filepath.Base(cwd))
}

// value returns the string value of a flag, or def when it is missing.
func value(flags map[string]cmdprompt.Argument, name, def string) (string, bool) {
	arg, ok := flags[name]
	if !ok {
		return def, def != ""
	}
	if arg.IsFlag() {
		return "", false
	}
	return arg.Value, true
}

func pwd(map[string]cmdprompt.Argument) cmdprompt.Result {
	cwd, err := os.Getwd()
	if err != nil {
		return cmdprompt.Fail(err.Error())
	}
	return cmdprompt.Succeed(cwd)
}

func ls(flags map[string]cmdprompt.Argument) cmdprompt.Result {
	path, ok := value(flags, "path", ".")
	if !ok {
		return cmdprompt.Fail("-path needs a directory")
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return cmdprompt.Fail(err.Error())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Contents of %s:", path)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		fmt.Fprintf(&b, "\n  %s", name)
	}
	return cmdprompt.Succeed(b.String())
}

func cd(flags map[string]cmdprompt.Argument) cmdprompt.Result {
	path, ok := value(flags, "path", "")
	if !ok {
		return cmdprompt.Fail("cd requires -path")
	}
	if err := os.Chdir(path); err != nil {
		return cmdprompt.Fail(err.Error())
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "unknown"
	}
	return cmdprompt.Succeed("Changed to: " + cwd)
}

func cat(flags map[string]cmdprompt.Argument) cmdprompt.Result {
	file, ok := value(flags, "file", "")
	if !ok {
		return cmdprompt.Fail("cat requires -file")
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return cmdprompt.Fail(err.Error())
	}

	// Limit output for large files
	if len(content) > 1000 {
		return cmdprompt.Succeed(fmt.Sprintf("File content (first 1000 bytes):\n%s\n... (truncated)", content[:1000]))
	}
	return cmdprompt.Succeed(fmt.Sprintf("File content:\n%s", content))
}

func run(text string) cmdprompt.Result {
	args := strings.Fields(text)
	if len(args) == 0 {
		return cmdprompt.Fail("nothing to run")
	}

	// #nosec G204 - This is an example program that intentionally executes user input
	cmd := exec.CommandContext(context.Background(), args[0], args[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return cmdprompt.Fail(fmt.Sprintf("executing '%s': %v", args[0], err))
	}
	return cmdprompt.Succeed(strings.TrimRight(string(output), "\n"))
}
