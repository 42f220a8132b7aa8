package demoserver

// PageVersion is one renderable revision of a demo page.
type PageVersion struct {
	HTML string
}

// PageDefinition is a demo page with switchable revisions. Switching a page
// to a later version mutates its DOM between a scan and an apply, which is
// how the stale-locator (not_found) path gets exercised end to end.
type PageDefinition struct {
	Path        string
	Description string
	Versions    map[int]PageVersion
}

// GetAllPages returns the demo fixtures: a signup form, a checkout form
// with payment fields, and a contact form with a select and textarea.
func GetAllPages() []PageDefinition {
	return []PageDefinition{
		{
			Path:        "/signup",
			Description: "Signup form; v2 renames the field ids so v1 locators stop resolving",
			Versions: map[int]PageVersion{
				1: {HTML: signupV1},
				2: {HTML: signupV2},
			},
		},
		{
			Path:        "/checkout",
			Description: "Checkout form mixing shipping fields with payment fields",
			Versions: map[int]PageVersion{
				1: {HTML: checkoutV1},
			},
		},
		{
			Path:        "/contact",
			Description: "Contact form with country select and message textarea",
			Versions: map[int]PageVersion{
				1: {HTML: contactV1},
			},
		},
	}
}

const signupV1 = `<!DOCTYPE html>
<html><head><title>Demo Signup</title></head><body>
<h1>Create your account</h1>
<form action="/signup" method="post">
  <label for="full-name">Full Name</label>
  <input type="text" id="full-name" name="full_name" autocomplete="name">

  <label for="email">Email</label>
  <input type="email" id="email" name="email" autocomplete="email">

  <label for="phone">Phone</label>
  <input type="tel" id="phone" name="phone" autocomplete="tel">

  <label for="password">Password</label>
  <input type="password" id="password" name="password" autocomplete="new-password">

  <input type="hidden" name="csrf" value="demo-token">
  <input type="submit" value="Sign up">
</form>
</body></html>`

const signupV2 = `<!DOCTYPE html>
<html><head><title>Demo Signup</title></head><body>
<h1>Create your account</h1>
<form action="/signup" method="post">
  <label for="signup-name">Full Name</label>
  <input type="text" id="signup-name" name="signup_name" autocomplete="name">

  <label for="signup-email">Email</label>
  <input type="email" id="signup-email" name="signup_email" autocomplete="email">

  <label for="signup-password">Password</label>
  <input type="password" id="signup-password" name="signup_password" autocomplete="new-password">

  <input type="submit" value="Sign up">
</form>
</body></html>`

const checkoutV1 = `<!DOCTYPE html>
<html><head><title>Demo Checkout</title></head><body>
<h1>Checkout</h1>
<form action="/checkout" method="post">
  <fieldset>
    <legend>Shipping</legend>
    <label for="ship-name">Full Name</label>
    <input type="text" id="ship-name" name="name">

    <label for="ship-address">Street Address</label>
    <input type="text" id="ship-address" name="address1">

    <label for="ship-address2">Address 2</label>
    <input type="text" id="ship-address2" name="address2" placeholder="Apt, suite, unit">

    <label for="ship-city">City</label>
    <input type="text" id="ship-city" name="city">

    <label for="ship-zip">ZIP / Postal Code</label>
    <input type="text" id="ship-zip" name="zip">
  </fieldset>
  <fieldset>
    <legend>Payment</legend>
    <label for="cc-name">Name on Card</label>
    <input type="text" id="cc-name" name="cc-name" autocomplete="cc-name">

    <label for="cc-number">Card Number</label>
    <input type="text" id="cc-number" name="cc-number" autocomplete="cc-number">

    <label for="cc-cvv">Security Code</label>
    <input type="text" id="cc-cvv" name="cvv" aria-label="card number security code">
  </fieldset>
  <input type="submit" value="Place order">
</form>
</body></html>`

const contactV1 = `<!DOCTYPE html>
<html><head><title>Demo Contact</title></head><body>
<h1>Contact us</h1>
<form action="/contact" method="post">
  <label for="contact-email">Email</label>
  <input type="email" id="contact-email" name="email">

  <label for="contact-company">Company</label>
  <input type="text" id="contact-company" name="company">

  <label for="contact-country">Country</label>
  <select id="contact-country" name="country">
    <option value="">Choose...</option>
    <option value="US">United States</option>
    <option value="DE">Germany</option>
    <option value="JP">Japan</option>
  </select>

  <label for="contact-message">Message</label>
  <textarea id="contact-message" name="message"></textarea>

  <input type="submit" value="Send">
</form>
</body></html>`
