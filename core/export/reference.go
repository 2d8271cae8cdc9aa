package export

import (
	"fmt"
	"strings"
)

// NodeName extracts the bare object name from a quoted object reference:
//
//	BP_CaptureZoneCluster_C'Map:PersistentLevel.Cluster_02'  ->  Cluster_02
func NodeName(objectName string) (string, error) {
	if strings.TrimSpace(objectName) == "" {
		return "", fmt.Errorf("%w: empty node reference", ErrMalformedReference)
	}
	dot := strings.LastIndexByte(objectName, '.')
	quote := strings.LastIndexByte(objectName, '\'')
	if dot < 0 || quote <= dot {
		return "", fmt.Errorf("%w: %q", ErrMalformedReference, objectName)
	}
	return objectName[dot+1 : quote], nil
}
