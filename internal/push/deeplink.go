package push

// DefaultRoute is where a notification click lands when the payload carries
// no item reference.
const DefaultRoute = "/"

// RouteFor derives the deep link for a notification click from the message
// payload: /item/{itemId} when an item id is present, else the default route.
func RouteFor(data map[string]string) string {
	if id := data["itemId"]; id != "" {
		return "/item/" + id
	}
	return DefaultRoute
}
