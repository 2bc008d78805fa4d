// Package sampling generates synthetic point clouds for exercising and
// benchmarking the kdtree package, in the spirit of the original
// PointCloudGenerator collaborator.
package sampling
