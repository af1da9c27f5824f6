// Package main provides the qimen CLI for arranging QiMen DunJia hour charts.
package main

func main() {
	Execute()
}
