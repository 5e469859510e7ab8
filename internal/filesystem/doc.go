/*
Package filesystem holds the file plumbing shared by the importer and the
manifest builder.

# Discovery

ImageFiles walks a tree and yields one ImageFile per eligible image, in
lexical walk order. The sequence is lazy and restartable: each range over it
starts a fresh walk, so the importer and the builder never share iterator state.

	for img, err := range filesystem.ImageFiles(root) {
	    if err != nil {
	        return err
	    }
	    fmt.Println(img.RelPath)
	}

# Copying and writing

CopyFile streams a file and carries over its permission bits and modification
time. WriteFileAtomic writes through a temp file in the target directory and
renames it into place, so readers see either the old or the new content.

# Retry Behavior

Photo sources often live on NAS mounts. StatWithRetry and OpenWithRetry retry
only NFS stale file handle errors (ESTALE) with exponential backoff:
  - MaxRetries: 3 attempts
  - InitialBackoff: 50ms
  - MaxBackoff: 500ms

All other errors are returned immediately and unchanged.

An Observer can be installed with SetObserver to record retries; the metrics
package provides one.
*/
package filesystem
