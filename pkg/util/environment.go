package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetDataDirectory returns the directory holding the yaml registries, overridable with HKMTR_DATA_DIR
func GetDataDirectory() string {
	env := GetEnvironmentVariables()

	if env["HKMTR_DATA_DIR"] != "" {
		return env["HKMTR_DATA_DIR"]
	}

	return "data"
}
