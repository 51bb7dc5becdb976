package main

import (
	"os"

	"github.com/talent-plan/txnkv/kv/txnkv-ctl/command"
)

func main() {
	if err := command.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
