// Package huematch embeds the lipstick color recommender in a Go program
// without running the HTTP server.
//
// The client reads the same catalogs as the server: Redis or Valkey hashes,
// a Postgres table, or a YAML file.
//
//	client, _ := huematch.New(ctx, huematch.WithFile("catalog.yaml"))
//	defer client.Close()
//
//	res, err := client.Recommend(ctx, "Spring Warm", "Lip Tint", huematch.Target{
//	    Hue:        huematch.Float(12),
//	    Saturation: huematch.Float(65),
//	})
//	if errors.Is(err, huematch.ErrNoMatch) {
//	    // nothing in this personal color / product type
//	}
//	for _, item := range res.Items {
//	    fmt.Println(item.Rank, item.Name, item.ColorLabel, item.Score)
//	}
//
// Omitted target components default to the middle of the observed range of
// the filtered products; Bounds reports that range.
package huematch
