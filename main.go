package main

import "github.com/nekruzvatanshoev/carfinder/pkg/cmd"

func main() {
	cmd.Execute()
}
