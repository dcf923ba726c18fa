// Package main is a small command shell built on cmdprompt.Shell.
package main

import (
	"log"

	"github.com/nao1215/cmdprompt"
)

func main() {
	registry := cmdprompt.NewRegistry()
	must(registry.AddFunc("quit", "Leave the shell", quit))
	must(registry.AddFunc("help", "List the commands", help))
	must(registry.AddFunc("version", "Print the version", version))
	must(registry.AddFunc("ssh", "Connect to -ip [-port]", ssh))
	must(registry.AddFunc("fail", "Always fails", fail))
	must(registry.AddSpecialFunc('!', "Run a local command", localExecute))

	shell, err := cmdprompt.NewShell(">>> ", registry)
	if err != nil {
		log.Fatal(err)
	}
	defer shell.Close()

	if err := shell.Run(); err != nil {
		log.Fatal(err)
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func quit(map[string]cmdprompt.Argument) cmdprompt.Result {
	return cmdprompt.Quit()
}

func help(map[string]cmdprompt.Argument) cmdprompt.Result {
	return cmdprompt.Succeed("List of commands")
}

func version(map[string]cmdprompt.Argument) cmdprompt.Result {
	return cmdprompt.Succeed("Version 0.0.1")
}

func ssh(flags map[string]cmdprompt.Argument) cmdprompt.Result {
	ip, ok := flags["ip"]
	if !ok || ip.IsFlag() {
		return cmdprompt.Fail("-ip - IP Address is Required")
	}

	port := cmdprompt.String("22")
	if p, ok := flags["port"]; ok {
		port = p
	}
	if port.IsFlag() {
		return cmdprompt.Fail("-port - Port must be provided a value")
	}

	return cmdprompt.Succeed("Connecting to SSH " + ip.Value + ":" + port.Value)
}

func fail(map[string]cmdprompt.Argument) cmdprompt.Result {
	return cmdprompt.Fail("All I do is fail")
}

func localExecute(text string) cmdprompt.Result {
	return cmdprompt.Succeed("Running: " + text)
}
