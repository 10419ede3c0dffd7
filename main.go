/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/easytech/webapi/cmd"

func main() {
	cmd.Execute()
}
