package main

import (
	"os"

	"github.com/nanahuse/constmapper/query"
)

func main() {
	query.Main(os.Args)
}
