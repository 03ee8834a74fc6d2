// cmd/fabin/main.go
package main

import (
	"fabin/internal/app"
	"fabin/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
