// Package linkshelf renders read-only directory listings and signs
// time-limited download links for the files in them.
//
// File contents are never served here. Each download link points at a
// location guarded by nginx's secure_link module, which checks the token and
// expiry itself:
//
//	secure_link $arg_h,$arg_e;
//	secure_link_md5 "$secure_link_expires$uri <secret>";
//
// # Key Components
//
//   - PathMapper: converts between request paths, download URIs and
//     filesystem paths, refusing anything that would leave the base directory
//   - LinkSigner: mints signed download links; LinkVerifier checks them the
//     way the proxy does
//   - ListingService: lists one directory and links every entry
//   - DirectoryStore: interface for reading a directory (see package
//     filesystem)
//
// # Example Usage
//
//	mapper, err := linkshelf.NewPathMapper("/srv/files", "/downloads", "/download")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	signer, err := linkshelf.NewLinkSigner(linkshelf.SignerConfig{Secret: secret}, mapper)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	root, err := os.OpenRoot("/srv/files")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	service, err := linkshelf.NewListingService(mapper, filesystem.NewDirectoryStore(root), signer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	listing, err := service.List(ctx, []string{"music"}, "files.example.com")
//
// # Errors
//
// Operations return errors wrapping the sentinels in errors.go, such as
// ErrPathTraversal, ErrNotFound and ErrConfiguration. Match them with
// errors.Is.
package linkshelf
