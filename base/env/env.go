package env

import (
	"os"
)

// PodName is the k8s pod running this process, falling back to the hostname
func PodName() string {
	if name := os.Getenv("PODNAME"); name != "" {
		return name
	}
	host, _ := os.Hostname()
	return host
}
