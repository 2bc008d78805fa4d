// Package plyio reads and writes the ASCII PLY point-exchange format
// used to interchange point clouds and line segments with other tools,
// mirroring the layout produced by the original PlyHandler collaborator.
package plyio
