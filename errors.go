package cluster

import "fmt"

// InvalidParameterError reports a configuration value outside its domain,
// such as k outside [1, N] or an unknown linkage name.
type InvalidParameterError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("cluster: invalid %s %v: %s", e.Param, e.Value, e.Reason)
}

// InvalidInputError reports a point set that cannot be clustered.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "cluster: invalid input: " + e.Reason
}

// EmptyClusterError is returned by K-Means when an assignment step leaves a
// cluster without points, making its centroid undefined.
type EmptyClusterError struct {
	Cluster   int
	Iteration int
}

func (e *EmptyClusterError) Error() string {
	return fmt.Sprintf("cluster: k-means cluster %d received no points in iteration %d", e.Cluster, e.Iteration)
}
