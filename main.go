/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/George-coder-ai/MarkIt-Up1/cmd"

func main() {
	cmd.Execute()
}
