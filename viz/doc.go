// Package viz dumps a kdtree.KDTree's leaf buckets and splitting planes
// to ASCII PLY files for visual debugging, mirroring the original
// KDTree2Ply collaborator. It never mutates the tree: every point it
// writes is a copy.
package viz
